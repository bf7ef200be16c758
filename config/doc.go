// Package config provides the hierarchical parameter database used to
// assemble and tune breeding trees.
//
// Parameters are loaded with Viper from YAML, JSON or TOML files, an
// optional .env file, and BREED_-prefixed environment variables. Every
// lookup takes a primary key and a default key: the value under the primary
// key wins, otherwise the default key is consulted, otherwise the caller's
// fallback applies.
//
// # Usage
//
//	params, err := config.Load(config.WithConfigFile("run.yml"))
//	base := config.NewPath("pop.subpop.0.species.pipe")
//	n, err := params.Int(base.Push("num-inds"), config.NewPath("breed.force").Push("num-inds"), 1)
package config
