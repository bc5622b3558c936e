// Package config loads environment variables into tagged structs.
//
// Every package that needs settings owns a Config struct with env and
// envDefault tags. The binary composes them into one struct and loads it
// once at startup; nested structs are walked, and envPrefix namespaces a
// reused type:
//
//	type Config struct {
//		Server     server.Config
//		Session    session.Config
//		LoginLimit ratelimiter.Config `envPrefix:"LOGIN_"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// A .env file in the working directory is read once, before the first
// parse; real environment variables take precedence over it. Parsed values
// are cached per type, so later Load calls for the same type are cheap and
// see the same result. Tests call Reset after changing the environment.
package config
