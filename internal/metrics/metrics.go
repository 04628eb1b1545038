package metrics

import "time"

const (
	EventPaySubmitted      = "pay_submitted"
	EventPayFailed         = "pay_failed"
	EventPayInvalidAddress = "pay_invalid_address"
	EventUnauthorized      = "unauthorized"

	OperationSubmit = "submit"
)

type Recorder interface {
	IncCounter(name string)
	ObserveLatency(name string, duration time.Duration)
}
