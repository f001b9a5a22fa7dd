package middleware

import "golang.org/x/net/context"

const urlParamsKey contextKey = "urlparams"

// WithURLParams stores router path parameters in ctx.
func WithURLParams(ctx context.Context, params map[string]string) context.Context {
	return context.WithValue(ctx, urlParamsKey, params)
}

// URLParam returns the named path parameter.
func URLParam(ctx context.Context, name string) (string, bool) {
	params, ok := ctx.Value(urlParamsKey).(map[string]string)
	if !ok {
		return "", false
	}
	v, ok := params[name]
	return v, ok
}
