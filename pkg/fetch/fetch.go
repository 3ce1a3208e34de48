package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"

	"lobbyview/pkg/catalog"
)

// AcceptedReportNames are the filename variants recognized as a manually
// placed reports download. Only these exact names are checked, in order.
var AcceptedReportNames = []string{
	"lobbyview_reports.csv",
	"reports.csv",
	"lobbyview_reports_level.csv",
	"LobbyView_reports.csv",
}

// Reason classifies how a Resolve call ended.
type Reason string

const (
	FoundLocal        Reason = "found_local"
	Downloaded        Reason = "downloaded"
	RemoteUnavailable Reason = "remote_unavailable"
)

// Result is the outcome of resolving a dataset: either a usable path or a
// structured reason why there is none. Callers check OK rather than an
// error value, since an unreachable remote is expected here.
type Result struct {
	Path   string
	Reason Reason
	Err    error
}

// OK reports whether the result carries a usable file.
func (r Result) OK() bool {
	return r.Path != ""
}

// Fetcher downloads datasets and resolves manually placed files.
type Fetcher struct {
	client *resty.Client
	names  []string
	logger *log.Logger
	out    io.Writer
}

type Option func(*Fetcher)

// WithAcceptedNames overrides the recognized local filename variants.
func WithAcceptedNames(names []string) Option {
	return func(f *Fetcher) { f.names = names }
}

// WithOutput redirects guidance text away from stdout.
func WithOutput(w io.Writer) Option {
	return func(f *Fetcher) { f.out = w }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.client.SetTimeout(d) }
}

func New(logger *log.Logger, opts ...Option) *Fetcher {
	client := resty.New()
	client.SetTimeout(time.Second * 30)

	f := &Fetcher{
		client: client,
		names:  AcceptedReportNames,
		logger: logger,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Locate checks the accepted filename variants inside dir and returns the
// first that exists. It never scans the directory.
func (f *Fetcher) Locate(dir string) (string, bool) {
	for _, name := range f.names {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		f.logger.Info("found local reports file", "path", path, "size_mb", fmt.Sprintf("%.2f", float64(info.Size())/(1024*1024)))
		return path, true
	}
	return "", false
}

// Fetch issues a streamed GET and writes the body to dest, creating parent
// directories as needed. A non-2xx status or transport error comes back as
// an error and leaves no partial file behind.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f.logger.Info("downloading", "url", url, "dest", dest)
	resp, err := f.client.R().
		SetContext(ctx).
		SetOutput(dest).
		Get(url)
	if err != nil {
		os.Remove(dest)
		return fmt.Errorf("download failed: %w", err)
	}
	if resp.IsError() {
		os.Remove(dest)
		return fmt.Errorf("download failed: %s returned %s", url, resp.Status())
	}

	f.logger.Info("download complete", "dest", dest, "bytes", resp.Size())
	return nil
}

// Resolve finds the reports dataset: a manually placed local file wins
// outright (no network call), otherwise one best-effort download attempt is
// made against the catalog URL. When both fail, manual-download guidance is
// printed and the result carries the failure reason. Resolve never returns
// an error; the remote source is known to be unreliable.
func (f *Fetcher) Resolve(dir string, cat *catalog.Catalog) Result {
	if path, ok := f.Locate(dir); ok {
		return Result{Path: path, Reason: FoundLocal}
	}

	url := cat.ReportsURL()
	dest := filepath.Join(dir, "lobbyview_reports.csv")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	if err := f.Fetch(ctx, url, dest); err != nil {
		f.logger.Warn("automated download failed, the site serves downloads through a JavaScript interface", "error", err)
		ManualInstructions(f.out)
		NextSteps(f.out)
		return Result{Reason: RemoteUnavailable, Err: err}
	}
	return Result{Path: dest, Reason: Downloaded}
}

// FetchAll attempts every dataset in the catalog independently. One
// failing download does not stop the others; the returned map holds only
// the successes.
func (f *Fetcher) FetchAll(cat *catalog.Catalog, dir string) map[string]string {
	got := make(map[string]string)
	for _, d := range cat.Datasets() {
		dest := filepath.Join(dir, "lobbyview_"+d.Name+".csv")
		if err := f.Fetch(context.Background(), d.URL, dest); err != nil {
			f.logger.Warn("skipping dataset", "dataset", d.Name, "error", err)
			continue
		}
		got[d.Name] = dest
	}
	f.logger.Info("bulk fetch finished", "downloaded", len(got), "total", cat.Len())
	return got
}
