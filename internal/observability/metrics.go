package observability

type Metrics interface {
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveMirror(op string, ok bool)
	ObserveMail(ok bool)
	IncOrderCreated()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObserveMirror(string, bool)               {}
func (Noop) ObserveMail(bool)                         {}
func (Noop) IncOrderCreated()                         {}
