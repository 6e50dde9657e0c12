package optionbag

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/porticus-lab/chromepdf"
	"github.com/porticus-lab/chromepdf/internal/mocks"
)

var fakePDF = []byte("%PDF-1.4 fake")

func newTestBag(t *testing.T, opts ...Option) (*Bag, *mocks.MockOutputRunner, afero.Fs) {
	t.Helper()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockOutputRunner(ctrl)
	fs := afero.NewMemMapFs()
	base := []Option{WithRunner(runner), WithFs(fs), WithTempDir("/tmp")}
	return New(append(base, opts...)...), runner, fs
}

func htmlFiles(t *testing.T, fs afero.Fs) []string {
	t.Helper()
	files, err := afero.Glob(fs, "/tmp/*.html")
	require.NoError(t, err)
	return files
}

func argAfter(argv []string, flag string) string {
	for i := 0; i < len(argv)-1; i++ {
		if argv[i] == flag {
			return argv[i+1]
		}
	}
	return ""
}

// capture records argv and returns a fake PDF.
func capture(seen *[]string) func(context.Context, []string) ([]byte, error) {
	return func(_ context.Context, argv []string) ([]byte, error) {
		*seen = argv
		return fakePDF, nil
	}
}

func TestOutputFromHTML_Defaults(t *testing.T) {
	b, runner, fs := newTestBag(t)

	var argv []string
	runner.EXPECT().Output(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, a []string) ([]byte, error) {
		data, err := afero.ReadFile(fs, argAfter(a, "--file"))
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", string(data))
		return capture(&argv)(ctx, a)
	})

	out, err := b.OutputFromHTML(context.Background(), "<p>hi</p>")
	require.NoError(t, err)
	assert.Equal(t, fakePDF, out)

	assert.Equal(t, []string{
		"chrome-pdf", "pdf",
		"--format", "A4",
		"--margin", "0,0,0,0",
		"--printBackground", "true",
		"--file", argAfter(argv, "--file"),
	}, argv)
	assert.Empty(t, htmlFiles(t, fs))
}

func TestOutput_Source(t *testing.T) {
	testCases := []struct {
		src  string
		flag string
	}{
		{"https://example.com", "--page"},
		{"file:///srv/report.html", "--page"},
		{"/srv/report.html", "--file"},
		{"report.html", "--file"},
	}
	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			b, runner, _ := newTestBag(t)

			var argv []string
			runner.EXPECT().Output(gomock.Any(), gomock.Any()).DoAndReturn(capture(&argv))

			_, err := b.Output(context.Background(), tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.src, argAfter(argv, tc.flag))
		})
	}
}

func TestOutput_DropsPath(t *testing.T) {
	b, runner, _ := newTestBag(t)
	require.NoError(t, b.SetOption("path", "/srv/out.pdf"))

	var argv []string
	runner.EXPECT().Output(gomock.Any(), gomock.Any()).DoAndReturn(capture(&argv))

	_, err := b.Output(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.NotContains(t, argv, "--path")
}

func TestGenerate(t *testing.T) {
	b, runner, _ := newTestBag(t)

	var argv []string
	runner.EXPECT().Output(gomock.Any(), gomock.Any()).DoAndReturn(capture(&argv))

	_, err := b.Generate(context.Background(), "https://example.com", "/srv/out.pdf", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"--page", "https://example.com", "--path", "/srv/out.pdf"}, argv[len(argv)-4:])
}

func TestGenerate_ExistingDestination(t *testing.T) {
	b, runner, fs := newTestBag(t)
	require.NoError(t, afero.WriteFile(fs, "/srv/out.pdf", []byte("old"), 0o644))

	_, err := b.Generate(context.Background(), "in.html", "/srv/out.pdf", false)
	var fileErr *chromepdf.FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "/srv/out.pdf", fileErr.Path)
	assert.ErrorIs(t, err, chromepdf.ErrFileExists)

	_, err = b.GenerateFromHTML(context.Background(), "<p>x</p>", "/srv/out.pdf", false)
	assert.ErrorIs(t, err, chromepdf.ErrFileExists)

	var argv []string
	runner.EXPECT().Output(gomock.Any(), gomock.Any()).DoAndReturn(capture(&argv))
	_, err = b.GenerateFromHTML(context.Background(), "<p>x</p>", "/srv/out.pdf", true)
	require.NoError(t, err)
	assert.Equal(t, "/srv/out.pdf", argAfter(argv, "--path"))
}

func TestSetOption_Unknown(t *testing.T) {
	b, _, _ := newTestBag(t)

	err := b.SetOption("foo", "bar")
	var cfgErr *chromepdf.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, `chromepdf: the option "foo" does not exist`, err.Error())
}

func TestSetOption_KeepsPosition(t *testing.T) {
	b, _, _ := newTestBag(t)
	require.NoError(t, b.SetOption("landscape", true))
	require.NoError(t, b.SetOption("format", "Letter"))

	assert.Equal(t, []Setting{
		{Name: "format", Value: "Letter"},
		{Name: "margin", Value: Margin{"0", "0", "0", "0"}},
		{Name: "printBackground", Value: true},
		{Name: "landscape", Value: true},
	}, b.Settings())
}

func TestSetOption_Margin(t *testing.T) {
	testCases := []struct {
		name  string
		value any
		want  Margin
	}{
		{"one", "1cm", Margin{"1cm", "1cm", "1cm", "1cm"}},
		{"two", "1cm 2cm", Margin{"1cm", "2cm", "1cm", "2cm"}},
		{"three", "1cm 2cm 3cm", Margin{"1cm", "2cm", "3cm", "2cm"}},
		{"four", "1cm 2cm 3cm 4cm", Margin{"1cm", "2cm", "3cm", "4cm"}},
		{"side map", map[string]string{"top": "5mm", "left": "7mm"}, Margin{"5mm", "0", "0", "7mm"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, _, _ := newTestBag(t)
			require.NoError(t, b.SetOption("margin", tc.value))
			assert.Equal(t, tc.want, b.settings.margin())
		})
	}
}

func TestSetOption_MarginErrors(t *testing.T) {
	b, _, _ := newTestBag(t)

	err := b.SetOption("margin", "1 2 3 4 5")
	var cfgErr *chromepdf.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "margin", cfgErr.Option)
	assert.Equal(t, "1 2 3 4 5", cfgErr.Value)

	err = b.SetOption("margin", map[string]string{"middle": "1cm"})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "margin-middle", cfgErr.Option)

	assert.Equal(t, Margin{"0", "0", "0", "0"}, b.settings.margin())
}

func TestCommand_Values(t *testing.T) {
	b, runner, fs := newTestBag(t)
	require.NoError(t, b.SetOption("sandbox", false))
	require.NoError(t, b.SetOption("landscape", false))
	require.NoError(t, b.SetOption("viewport", []string{"1280", "720"}))
	require.NoError(t, b.SetOption("headerContent", "<b>head</b>"))

	var argv []string
	runner.EXPECT().Output(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, a []string) ([]byte, error) {
		data, err := afero.ReadFile(fs, argAfter(a, "--headerTemplate"))
		require.NoError(t, err)
		assert.Equal(t, "<b>head</b>", string(data))
		return capture(&argv)(ctx, a)
	})

	_, err := b.Output(context.Background(), "report.html")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"chrome-pdf", "pdf",
		"--format", "A4",
		"--margin", "0,0,0,0",
		"--printBackground", "true",
		"--no-sandbox",
		"--landscape", "false",
		"--viewport", "1280,720",
		"--headerTemplate", argAfter(argv, "--headerTemplate"),
		"--file", "report.html",
	}, argv)
	assert.Empty(t, htmlFiles(t, fs))
}

func TestCommand_SandboxEnabledOmitted(t *testing.T) {
	b, runner, _ := newTestBag(t)
	require.NoError(t, b.SetOption("sandbox", true))

	var argv []string
	runner.EXPECT().Output(gomock.Any(), gomock.Any()).DoAndReturn(capture(&argv))

	_, err := b.Output(context.Background(), "report.html")
	require.NoError(t, err)
	assert.NotContains(t, argv, "--sandbox")
	assert.NotContains(t, argv, "--no-sandbox")
}

func TestSetOption_UnsupportedValue(t *testing.T) {
	testCases := []struct {
		name  string
		value any
	}{
		{"scale", 1.5},
		{"footerContent", true},
		{"content", []string{"<p>a</p>"}},
		{"margin", 10},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, _, _ := newTestBag(t)

			err := b.SetOption(tc.name, tc.value)
			var cfgErr *chromepdf.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.name, cfgErr.Option)
			assert.Contains(t, cfgErr.Reason, "unsupported value type")
			assert.Len(t, b.Settings(), 3)
		})
	}
}

func TestOverridesDoNotPersist(t *testing.T) {
	b, runner, _ := newTestBag(t)

	var argv []string
	runner.EXPECT().Output(gomock.Any(), gomock.Any()).DoAndReturn(capture(&argv)).Times(2)

	_, err := b.Output(context.Background(), "report.html", Set("format", "Legal"), Set("margin", "1cm"))
	require.NoError(t, err)
	assert.Equal(t, "Legal", argAfter(argv, "--format"))
	assert.Equal(t, "1cm,1cm,1cm,1cm", argAfter(argv, "--margin"))

	_, err = b.Output(context.Background(), "report.html")
	require.NoError(t, err)
	assert.Equal(t, "A4", argAfter(argv, "--format"))
	assert.Equal(t, "0,0,0,0", argAfter(argv, "--margin"))
}

func TestOverrideError(t *testing.T) {
	b, _, _ := newTestBag(t)

	_, err := b.Output(context.Background(), "report.html", Set("bogus", true))
	var cfgErr *chromepdf.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRunnerError(t *testing.T) {
	b, runner, fs := newTestBag(t)

	procErr := &chromepdf.ProcessError{Command: "chrome-pdf", ExitCode: 1, Err: errors.New("exit status 1")}
	runner.EXPECT().Output(gomock.Any(), gomock.Any()).Return(nil, procErr)

	_, err := b.OutputFromHTML(context.Background(), "<p>hi</p>")
	assert.Same(t, procErr, err)
	assert.Empty(t, htmlFiles(t, fs))
}

func TestSpecifiedBinary(t *testing.T) {
	b, runner, _ := newTestBag(t, WithBinary("/opt/bin/test-pdf-binary"))

	var argv []string
	runner.EXPECT().Output(gomock.Any(), gomock.Any()).DoAndReturn(capture(&argv))

	_, err := b.Output(context.Background(), "report.html")
	require.NoError(t, err)
	assert.Equal(t, "/opt/bin/test-pdf-binary", argv[0])
}
