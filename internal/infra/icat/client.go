// Package icat is the catalog adapter: it queries the facility's REST
// service and extracts single fields from the XML documents it returns.
package icat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/peterfpeterson/finddata/internal/domain"
	"github.com/peterfpeterson/finddata/internal/infra/httpclient"
	"github.com/peterfpeterson/finddata/internal/ports"
)

// Client talks to the catalog service. Calls are synchronous and stateless;
// nothing is cached between them. The logger is held explicitly, handed in
// by the caller at construction.
type Client struct {
	exec *httpclient.Executor
	base string
	log  *slog.Logger
}

type Option func(*Client)

// WithExecutor swaps the HTTP executor.
func WithExecutor(e *httpclient.Executor) Option {
	return func(c *Client) {
		if e != nil {
			c.exec = e
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		exec: httpclient.NewExecutor(),
		base: strings.TrimRight(baseURL, "/") + "/",
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.Catalog = (*Client)(nil)

// ListInstruments fetches the facility instrument list. Codes come back in
// document order, in whatever case the service uses.
func (c *Client) ListInstruments(ctx context.Context) ([]string, error) {
	doc, err := c.fetch(ctx, "icat.list_instruments", "experiment/SNS")
	if err != nil {
		return nil, err
	}

	instruments := []string{}
	root := doc.FindElement("//instruments")
	if root == nil {
		return instruments, nil
	}

	for _, child := range root.ChildElements() {
		if text := strings.TrimSpace(child.Text()); text != "" {
			instruments = append(instruments, text)
		}
	}
	return instruments, nil
}

// FindProposal looks up the proposal that produced a run. A document without
// a proposal value reports Found=false rather than an error.
func (c *Client) FindProposal(ctx context.Context, instrument string, run int) (domain.Lookup, error) {
	rel := fmt.Sprintf("dataset/SNS/%s/%d/metaOnly", instrument, run)
	doc, err := c.fetch(ctx, "icat.find_proposal", rel)
	if err != nil {
		return domain.Lookup{}, err
	}
	return textLookup(doc, "proposal"), nil
}

// ListRunsInProposal returns the run range recorded for a proposal. The
// service pads the range with spaces ("100 - 200"); they are all removed.
func (c *Client) ListRunsInProposal(ctx context.Context, instrument, proposal string) (domain.Lookup, error) {
	rel := fmt.Sprintf("experiment/SNS/%s/%s", instrument, proposal)
	doc, err := c.fetch(ctx, "icat.list_runs", rel)
	if err != nil {
		return domain.Lookup{}, err
	}

	lk := textLookup(doc, "runRange")
	if lk.Found {
		lk.Value = strings.ReplaceAll(lk.Value, " ", "")
	}
	return lk, nil
}

// FindFileLocation resolves a filename through the catalog. The service
// suggests zero or more location paths; only ones that exist on the local
// filesystem count, and the first existing one in document order wins.
func (c *Client) FindFileLocation(ctx context.Context, filename string) (domain.Lookup, error) {
	doc, err := c.fetch(ctx, "icat.find_file_location", "datafile/filename/"+filename)
	if err != nil {
		return domain.Lookup{}, err
	}

	locs := doc.FindElement("//locations")
	if locs == nil {
		return domain.Lookup{}, nil
	}

	for _, loc := range locs.SelectElements("location") {
		path := strings.TrimSpace(loc.Text())
		if path == "" {
			continue
		}
		if !fileExists(path) {
			c.log.Debug("icat.location_skipped", "path", path)
			continue
		}
		return domain.Lookup{Value: path, Found: true}, nil
	}
	return domain.Lookup{}, nil
}

// FindDataFile resolves an instrument/run pair to an on-disk path, trying
// the pre-ADARA event filename first and the ADARA one second.
func (c *Client) FindDataFile(ctx context.Context, instrument string, run int) (string, error) {
	for _, name := range domain.DataFileNames(instrument, run) {
		lk, err := c.FindFileLocation(ctx, name)
		if err != nil {
			return "", err
		}
		if lk.Found {
			return lk.Value, nil
		}
	}
	return "", &domain.NotFoundError{Instrument: instrument, Run: run}
}

// fetch GETs a relative catalog path and parses the body into an XML tree.
func (c *Client) fetch(ctx context.Context, op, relPath string) (*etree.Document, error) {
	u := c.base + relPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindTransport, URL: u, Err: err}
	}

	res, err := c.exec.Do(ctx, req)
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindTransport, URL: u, Err: err}
	}
	c.log.Debug("icat.fetch", "url", u, "status", res.Status, "ms", res.Duration.Milliseconds())

	if res.Status >= http.StatusBadRequest {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindTransport,
			URL:  u,
			Err:  fmt.Errorf("unexpected status %d", res.Status),
		}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(res.BodyBytes); err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindMalformed, URL: u, Err: err}
	}
	return doc, nil
}

// textLookup extracts the text of the first element with the given tag
// anywhere in the document. Whitespace-only text counts as absent.
func textLookup(doc *etree.Document, tag string) domain.Lookup {
	el := doc.FindElement("//" + tag)
	if el == nil {
		return domain.Lookup{}
	}
	text := strings.TrimSpace(el.Text())
	if text == "" {
		return domain.Lookup{}
	}
	return domain.Lookup{Value: text, Found: true}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
