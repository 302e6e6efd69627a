// Copyright © 2024 The gmlfmt authors

package gmltest

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type recordingTB struct {
	testing.TB
	lines []string
}

func (r *recordingTB) Log(args ...any) {
	r.lines = append(r.lines, args[0].(string))
}

func TestLogger(t *testing.T) {
	rec := &recordingTB{TB: t}
	log := NewLogger(rec)

	n, err := log.Write([]byte("one\ntwo\nthr"))
	assert.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, []string{"one", "two"}, rec.lines)

	_, _ = log.Write([]byte("ee\n"))
	assert.Equal(t, []string{"one", "two", "three"}, rec.lines)

	_, _ = log.Write([]byte("tail"))
	log.Flush()
	log.Flush()
	assert.Equal(t, []string{"one", "two", "three", "tail"}, rec.lines)
}

func TestNewLogrus(t *testing.T) {
	log := NewLogrus(t)
	log.WithField("file", "a.gml").Debug("parsed")
	assert.True(t, log.IsLevelEnabled(logrus.DebugLevel))
}

func TestBenchmarkSource(t *testing.T) {
	calls := 0
	res := testing.Benchmark(BenchmarkSource([]byte("x = 1;"), func(src []byte) error {
		calls++
		assert.Equal(t, "x = 1;", string(src))
		return nil
	}))
	assert.Positive(t, res.N)
	assert.GreaterOrEqual(t, calls, res.N)
	assert.Equal(t, int64(6), res.Bytes)
}
