package ai

import "context"

type Client interface {
	Summarize(ctx context.Context, reportXML string) (string, error)
}
