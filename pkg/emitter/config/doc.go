/*
Package config loads emitter configuration.

# Channel Files

Channel descriptors can be declared in YAML or JSON and installed with
emitter.NewWithChannels:

	channels:
	  - name: progress
	    role: notify
	    sticky_last: true
	    description: percent complete
	  - name: audit
	    role: observe

	cfg, err := config.FromFile("channels.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	descs, err := cfg.Descriptors("channels")
	if err != nil {
	    log.Fatal(err)
	}
	em, err := emitter.NewWithChannels(descs)

Config also offers typed accessors over the decoded map. Missing keys and
type mismatches return the supplied default.

# Environment Settings

Settings reads EMITKIT_* variables and turns them into emitter options:

	EMITKIT_LOG_LEVEL         debug | info | warn | error (default info)
	EMITKIT_DIAGNOSTIC_DELAY  delay before an unheard "error" is logged (default 0s)
	EMITKIT_DIAGNOSTIC_RATE   unhandled diagnostics per second, 0 for unlimited
	EMITKIT_DIAGNOSTIC_BURST  diagnostic burst size (default 1)
	EMITKIT_METRICS           none | otel | prometheus (default none)
	EMITKIT_TRACING           true to record a span per resolution

	s, err := config.SettingsFromEnv()
	if err != nil {
	    log.Fatal(err)
	}
	opts, err := s.Options(os.Stderr, prometheus.DefaultRegisterer)
	em := emitter.New(opts...)

# File Settings

LoadSettings overlays the "emitter" section of a config file on the
environment, using the same names in snake case:

	emitter:
	  log_level: debug
	  diagnostic_delay: 250ms
	  metrics: otel
*/
package config
