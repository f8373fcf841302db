package state

// RequestState is the rendered view of one request-backed resource.
// Loading and Error are never set together. Success is true only right
// after SUCCESS and is cleared by the next REQUEST or by RESET.
//
// Data is shared between successive states and must be treated as
// read-only.
type RequestState[T any] struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
	Data    *T     `json:"data"`
	Success bool   `json:"success"`
}

// reduceRequest applies the lifecycle transitions of r to s. REQUEST keeps
// the previous data visible while loading. FAIL drops it. A SUCCESS whose
// payload is not a T is ignored, as are transitions of other resources.
func reduceRequest[T any](s RequestState[T], r Resource, a Action) RequestState[T] {
	switch a.Type {
	case r.RequestType():
		return RequestState[T]{Loading: true, Data: s.Data}
	case r.SuccessType():
		data, ok := payloadAs[T](a.Payload)
		if !ok {
			return s
		}
		return RequestState[T]{Data: data, Success: true}
	case r.FailType():
		return RequestState[T]{Error: a.Error}
	case r.ResetType():
		return RequestState[T]{}
	}
	return s
}

func payloadAs[T any](payload any) (*T, bool) {
	switch p := payload.(type) {
	case T:
		return &p, true
	case *T:
		if p == nil {
			return nil, false
		}
		v := *p
		return &v, true
	}
	return nil, false
}
