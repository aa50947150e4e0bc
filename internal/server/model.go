package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/drakos74/xmlp/internal/api"
	"github.com/rs/zerolog/log"
)

const (
	HealthPath  = "/health"
	MessagePath = "/api/message"
)

// Dispatcher handles a message and returns everything the object emitted for it.
type Dispatcher func(msg api.Message) ([]api.Output, error)

// MessageRequest is the payload of the message route.
type MessageRequest struct {
	Message string `json:"message"`
}

// Output is an emitted output as returned by the message route.
type Output struct {
	Outlet   int           `json:"outlet"`
	Selector string        `json:"selector,omitempty"`
	Values   []interface{} `json:"values"`
}

// MessageResponse is the response of the message route.
type MessageResponse struct {
	Outputs []Output `json:"outputs"`
	Error   string   `json:"error,omitempty"`
}

func newOutput(o api.Output) Output {
	values := make([]interface{}, len(o.Atoms))
	for i, a := range o.Atoms {
		switch a.Type {
		case api.Number:
			values[i] = a.Number
		default:
			values[i] = a.Symbol
		}
	}
	return Output{
		Outlet:   o.Outlet,
		Selector: o.Selector,
		Values:   values,
	}
}

// Health responds with an empty body as long as the server is up.
func Health() Route {
	return Route{
		Path:   HealthPath,
		Method: http.MethodGet,
		Exec: func(r *http.Request) ([]byte, int, error) {
			return []byte{}, http.StatusOK, nil
		},
	}
}

// Message dispatches a single message e.g. {"message":"map 0.1 0.2"}.
// A failed message responds with a bad request, along with whatever was emitted before the failure.
func Message(dispatch Dispatcher) Route {
	return Route{
		Path:   MessagePath,
		Method: http.MethodPost,
		Exec: func(r *http.Request) ([]byte, int, error) {
			var request MessageRequest
			if err := read(r, &request); err != nil {
				return []byte(err.Error()), http.StatusBadRequest, nil
			}
			msg, err := api.ParseMessage(request.Message)
			if err != nil {
				return []byte(err.Error()), http.StatusBadRequest, nil
			}
			outputs, err := dispatch(msg)
			response := MessageResponse{
				Outputs: make([]Output, len(outputs)),
			}
			for i, o := range outputs {
				response.Outputs[i] = newOutput(o)
			}
			code := http.StatusOK
			if err != nil {
				response.Error = err.Error()
				code = http.StatusBadRequest
			}
			b, err := json.Marshal(response)
			if err != nil {
				return nil, 0, fmt.Errorf("could not encode response: %w", err)
			}
			return b, code, nil
		},
	}
}

func read(r *http.Request, v interface{}) error {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return err
	}
	log.Trace().
		Str("remote-address", r.RemoteAddr).
		Str("body", string(body)).
		Msg("received payload")
	return json.Unmarshal(body, v)
}
