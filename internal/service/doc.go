// Package service is the inference front door core. It owns the single
// model handle for the process lifetime and is structured into small files
// by concern:
//
//   - service.go: Service type, Config, construction (model load) and the
//     one-way lifecycle (ready -> draining -> stopped).
//   - admission.go: bounded FIFO admission to the generation slots.
//   - generate.go: validation, parameter defaulting and the Generate entry
//     point.
//   - errors.go: error taxonomy and Is* helpers consumed by the HTTP layer.
//   - status.go: status snapshot for /status.
//   - metrics.go: Prometheus collectors.
//
// External packages should use public methods only (New, Generate, Status,
// Ready, BeginDrain, Close).
package service
