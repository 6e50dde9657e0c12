package optionbag

import "context"

//go:generate mockgen -source=./runner.go -destination=../internal/mocks/output_runner.mock.go -package=mocks -mock_names=Runner=MockOutputRunner Runner

// Runner runs a command to completion and returns its standard output.
// [chrome.ExecRunner] satisfies it.
type Runner interface {
	Output(ctx context.Context, argv []string) ([]byte, error)
}
