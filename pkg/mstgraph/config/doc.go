/*
Package config loads editor configuration.

Config wraps a map[string]any with typed accessors that fall back to a
default on missing keys or type mismatches:

	cfg := config.New(map[string]any{
	    "weight_scale":  25,
	    "tick_interval": "500ms",
	})

	scale := cfg.Float("weight_scale", 50)               // 25
	tick := cfg.Duration("tick_interval", 2*time.Second) // 500ms

Settings is the typed view the editor consumes. FromConfig overlays a Config
on DefaultSettings and validates it with go-playground/validator:

	settings, err := config.Load("mstgraph.yaml")

A complete file:

	weight_scale: 50
	tick_interval: 2s
	seeds:
	  - {id: A, x: 100, y: 200}
	  - {id: B, x: 300, y: 200}
	journal:
	  driver: sqlite        # none | memory | sqlite
	  path: ./journal.db
	log:
	  level: info           # debug | info | warn | error
	  format: text          # text | json
	telemetry:
	  service_name: mstgraph
	  traces: none          # none | stdout | otlp
	  metrics: none         # none | stdout | prometheus
	  otlp_endpoint: localhost:4317
	  metrics_addr: ":9464"

Config is safe for concurrent reads as long as the source map is not
modified.
*/
package config
