package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/itemsplit/internal/segment"
)

var sample = []segment.TextBlock{
	{Key: "item_1", Text: "We make <widgets> & more."},
	{Key: "item_1a", Text: "Risks."},
}

func TestResultName(t *testing.T) {
	assert.Equal(t, "0000320193-24-000123.json", ResultName("/data/2024/0000320193-24-000123.txt"))
	assert.Equal(t, "report.json", ResultName("report.htm"))
	assert.Equal(t, "noext.json", ResultName("noext"))
}

func TestEncode_IndentedRecords(t *testing.T) {
	data, err := Encode(sample)
	require.NoError(t, err)

	assert.Contains(t, string(data), "\n  {\n    \"item_key\": \"item_1\",")
	assert.Contains(t, string(data), "<widgets> & more.")

	empty, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(empty))
}

func TestDirSink_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "2024")
	sink := NewDirSink(dir)

	path, err := sink.Put(context.Background(), "input/acme-10k.txt", sample)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "acme-10k.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []segment.TextBlock
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sample, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestDirSink_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDirSink(t.TempDir()).Put(ctx, "a.txt", sample)
	assert.ErrorIs(t, err, context.Canceled)
}

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Put(t *testing.T) {
	fake := &fakePutter{}
	sink := NewS3SinkWithClient(fake, "filings", "sections/2024")

	loc, err := sink.Put(context.Background(), "acme.txt", sample)
	require.NoError(t, err)

	assert.Equal(t, "s3://filings/sections/2024/acme.json", loc)
	assert.Equal(t, "filings", aws.ToString(fake.in.Bucket))
	assert.Equal(t, "sections/2024/acme.json", aws.ToString(fake.in.Key))
	assert.Equal(t, "application/json", aws.ToString(fake.in.ContentType))

	want, _ := Encode(sample)
	assert.Equal(t, want, fake.body)
}

func TestS3Sink_PutError(t *testing.T) {
	fake := &fakePutter{err: errors.New("access denied")}
	sink := NewS3SinkWithClient(fake, "filings", "")

	_, err := sink.Put(context.Background(), "acme.txt", sample)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://filings/acme.json")
}

func TestOpen(t *testing.T) {
	sink, err := Open(context.Background(), "", S3Config{})
	require.NoError(t, err)
	assert.Nil(t, sink)

	dir := t.TempDir()
	sink, err = Open(context.Background(), dir, S3Config{})
	require.NoError(t, err)
	assert.IsType(t, &DirSink{}, sink)
}

func TestMultiSink_WritesAll(t *testing.T) {
	dir := t.TempDir()
	fake := &fakePutter{}
	m := multiSink{NewDirSink(dir), NewS3SinkWithClient(fake, "b", "")}

	loc, err := m.Put(context.Background(), "acme.txt", sample)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "acme.json")+",s3://b/acme.json", loc)
}

func TestMultiSink_StopsOnError(t *testing.T) {
	fake := &fakePutter{}
	m := multiSink{NewS3SinkWithClient(&fakePutter{err: errors.New("denied")}, "a", ""), NewS3SinkWithClient(fake, "b", "")}

	_, err := m.Put(context.Background(), "acme.txt", sample)
	require.Error(t, err)
	assert.Nil(t, fake.in)
}
