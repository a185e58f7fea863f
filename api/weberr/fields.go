package weberr

import "errors"

type fielder interface {
	Fields() map[string]any
}

// Fields collects the log fields attached anywhere in err's chain.
// Outer wrappers win over inner ones on key clashes.
func Fields(err error) (fields map[string]any, ok bool) {
	for err != nil {
		var fe fielder
		if !errors.As(err, &fe) {
			break
		}
		if fields == nil {
			fields = make(map[string]any)
		}
		for k, v := range fe.Fields() {
			if _, set := fields[k]; !set {
				fields[k] = v
			}
		}
		ok = true

		u, isWrapper := fe.(interface{ Unwrap() error })
		if !isWrapper {
			break
		}
		err = u.Unwrap()
	}
	return fields, ok
}

type fieldsError struct {
	error
	fields map[string]any
}

func (e *fieldsError) Fields() map[string]any { return e.fields }

func (e *fieldsError) Unwrap() error { return e.error }
