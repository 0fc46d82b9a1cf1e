package outstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeObject struct {
	body        []byte
	contentType string
}

// fakeS3 answers the handful of path-style S3 calls the store makes.
type fakeS3 struct {
	mu   sync.Mutex
	objs map[string]fakeObject
}

func respond(status int, body string, h http.Header) *http.Response {
	if h == nil {
		h = http.Header{}
	}
	return &http.Response{
		StatusCode:    status,
		Header:        h,
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	if req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2" {
		prefix := req.URL.Query().Get("prefix")
		var keys []string
		for k := range f.objs {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult><IsTruncated>false</IsTruncated>`)
		for _, k := range keys {
			fmt.Fprintf(&b, `<Contents><Key>%s</Key><Size>%d</Size><ETag>"e"</ETag><LastModified>2026-01-01T00:00:00Z</LastModified></Contents>`,
				k, len(f.objs[k].body))
		}
		b.WriteString(`</ListBucketResult>`)
		return respond(http.StatusOK, b.String(), http.Header{"Content-Type": {"application/xml"}}), nil
	}

	objHeader := func(o fakeObject) http.Header {
		return http.Header{
			"Content-Length": {fmt.Sprint(len(o.body))},
			"Content-Type":   {o.contentType},
			"Etag":           {`"etag-1"`},
			"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
		}
	}

	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		f.objs[key] = fakeObject{body: body, contentType: req.Header.Get("Content-Type")}
		return respond(http.StatusOK, "", http.Header{"Etag": {`"etag-1"`}}), nil
	case http.MethodHead:
		o, ok := f.objs[key]
		if !ok {
			return respond(http.StatusNotFound, "", nil), nil
		}
		r := respond(http.StatusOK, "", objHeader(o))
		r.ContentLength = int64(len(o.body))
		return r, nil
	case http.MethodGet:
		o, ok := f.objs[key]
		if !ok {
			return respond(http.StatusNotFound,
				`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`,
				http.Header{"Content-Type": {"application/xml"}}), nil
		}
		r := respond(http.StatusOK, "", objHeader(o))
		r.Body = io.NopCloser(bytes.NewReader(o.body))
		r.ContentLength = int64(len(o.body))
		return r, nil
	case http.MethodDelete:
		delete(f.objs, key)
		return respond(http.StatusNoContent, "", nil), nil
	}
	return respond(http.StatusNotImplemented, "", nil), nil
}

func newFakeS3(t *testing.T, prefix string) *S3 {
	t.Helper()
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	if err != nil {
		t.Fatalf("aws config: %v", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: &fakeS3{objs: make(map[string]fakeObject)}}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://fake.s3.local")
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.RetryMaxAttempts = 1
	})
	return &S3{client: client, bucket: "reports", prefix: prefix}
}

func TestS3(t *testing.T) {
	s := newFakeS3(t, "")
	if s.Driver() != DriverS3 {
		t.Errorf("expected driver %q, got %q", DriverS3, s.Driver())
	}
	exercise(t, s)
}

func TestS3_Prefix(t *testing.T) {
	s := newFakeS3(t, "cases/2026")
	ctx := context.Background()
	if _, err := s.Put(ctx, "report.docx", strings.NewReader("doc"), DocxContentType); err != nil {
		t.Fatalf("put: %v", err)
	}
	list, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Key != "report.docx" {
		t.Errorf("expected the prefix stripped from listed keys, got %+v", list)
	}
	if list[0].ETag != "e" {
		t.Errorf("expected unquoted etag, got %q", list[0].ETag)
	}
}

func TestNewS3_RequiresBucket(t *testing.T) {
	if _, err := NewS3(context.Background(), S3Config{}); err == nil {
		t.Fatal("expected an error without a bucket")
	}
}
