package breeder

// Chunk is the half-open index range [From, To) of one thread's share of a
// subpopulation.
type Chunk struct {
	From, To int
}

// Len is the number of individuals in the chunk.
func (c Chunk) Len() int { return c.To - c.From }

// Partition splits size individuals into threads contiguous chunks. The
// first size%threads chunks get one extra individual.
func Partition(size, threads int) []Chunk {
	chunks := make([]Chunk, threads)
	each, extra := size/threads, size%threads
	from := 0
	for t := range chunks {
		n := each
		if t < extra {
			n++
		}
		chunks[t] = Chunk{From: from, To: from + n}
		from += n
	}
	return chunks
}
