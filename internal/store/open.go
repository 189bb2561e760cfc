package store

import (
	"context"
	"strings"

	"github.com/dgallion1/itemsplit/internal/segment"
)

// Open builds the sink for an output directory and/or S3 bucket. It returns
// nil when neither is configured.
func Open(ctx context.Context, dir string, s3cfg S3Config) (Sink, error) {
	var sinks multiSink
	if dir != "" {
		sinks = append(sinks, NewDirSink(dir))
	}
	if s3cfg.Bucket != "" {
		s3sink, err := NewS3Sink(ctx, s3cfg)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s3sink)
	}
	switch len(sinks) {
	case 0:
		return nil, nil
	case 1:
		return sinks[0], nil
	}
	return sinks, nil
}

// multiSink writes to every sink in order and stops at the first failure.
type multiSink []Sink

func (m multiSink) Put(ctx context.Context, name string, blocks []segment.TextBlock) (string, error) {
	locs := make([]string, 0, len(m))
	for _, s := range m {
		loc, err := s.Put(ctx, name, blocks)
		if err != nil {
			return "", err
		}
		locs = append(locs, loc)
	}
	return strings.Join(locs, ","), nil
}
