package testutil

import (
	"context"
	"fmt"
	"net/url"
	"reflect"

	"github.com/stretchr/testify/mock"
)

// MockRequester mocks request.Requester
type MockRequester struct {
	mock.Mock
}

func (m *MockRequester) Get(ctx context.Context, path string, params url.Values, out any) error {
	args := m.Called(ctx, path, params, out)
	return args.Error(0)
}

func (m *MockRequester) Post(ctx context.Context, path string, body any, params url.Values, out any) error {
	args := m.Called(ctx, path, body, params, out)
	return args.Error(0)
}

// Respond returns a mock.Run callback that stores value into the call's
// out argument, the last one for both Get and Post. value must be
// assignable to the element type of out.
func Respond(value any) func(mock.Arguments) {
	return func(args mock.Arguments) {
		out := args.Get(len(args) - 1)
		target := reflect.ValueOf(out)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			panic(fmt.Sprintf("testutil.Respond: out is %T, want non-nil pointer", out))
		}
		target.Elem().Set(reflect.ValueOf(value))
	}
}

// Params builds url.Values from key/value pairs.
func Params(kv ...string) url.Values {
	if len(kv)%2 != 0 {
		panic("testutil.Params: odd number of arguments")
	}
	values := url.Values{}
	for i := 0; i < len(kv); i += 2 {
		values.Set(kv[i], kv[i+1])
	}
	return values
}
