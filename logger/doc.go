// Package logger provides structured logging for breedkit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying breeding fields (run, generation,
// subpopulation, thread).
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.Get("breeder")
//	log.Info("generation bred", logger.Fields(logger.FieldGeneration, 3))
package logger
