// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowLen(t *testing.T) {
	assert.Equal(t, 1, WindowLen(0))
	assert.Equal(t, 3, WindowLen(1))
	assert.Equal(t, 5, WindowLen(2))
}

func TestContextLen(t *testing.T) {
	record := &MatchRecord{
		LineNo:   2,
		Keywords: []string{"ERROR"},
		Lines:    []string{"a", "ERROR b", "c"},
	}
	assert.Equal(t, 3, record.ContextLen())
}

func TestMatchRecordRoundTrip(t *testing.T) {
	record := MatchRecord{
		Source:   "/var/log/app.log",
		LineNo:   42,
		Keywords: []string{"ERROR", "panic"},
		Lines:    []string{"before", "ERROR: panic in handler", "after"},
	}

	buf := make([]byte, MatchRecordMUS.Size(record))
	n := MatchRecordMUS.Marshal(record, buf)
	assert.Equal(t, len(buf), n)

	decoded, n, err := MatchRecordMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, record, decoded)
}

func TestMatchRecordsRoundTrip(t *testing.T) {
	records := []MatchRecord{
		{Source: "a.log", LineNo: 1, Keywords: []string{"WARN"}, Lines: []string{"WARN x"}},
		{Source: "b.log", LineNo: 7, Keywords: []string{"foo", "bar"}, Lines: []string{"1", "foo bar", "3"}},
	}

	buf := make([]byte, MatchRecordsMUS.Size(records))
	MatchRecordsMUS.Marshal(records, buf)

	decoded, _, err := MatchRecordsMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, records, decoded)
}

func TestMatchRecordUnmarshalTruncated(t *testing.T) {
	record := MatchRecord{Source: "a.log", LineNo: 3, Keywords: []string{"x"}, Lines: []string{"x y"}}
	buf := make([]byte, MatchRecordMUS.Size(record))
	MatchRecordMUS.Marshal(record, buf)

	_, _, err := MatchRecordMUS.Unmarshal(buf[:len(buf)/2])
	assert.Error(t, err)
}
