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


package storage

import (
	"testing"

	"github.com/poiesic/fastmatcher/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRecordsRoundTrip(t *testing.T) {
	records := []*core.MatchRecord{
		{Source: "a.log", LineNo: 2, Keywords: []string{"ERROR"}, Lines: []string{"a", "ERROR b", "c"}},
		{Source: "b.log", LineNo: 9, Keywords: []string{"foo", "bar"}, Lines: []string{"foo bar"}},
	}

	data := MarshalMatchRecords(records)
	decoded, err := UnmarshalMatchRecords(data)
	require.NoError(t, err)
	assert.Equal(t, records, decoded)
}

func TestMatchRecordsEmpty(t *testing.T) {
	data := MarshalMatchRecords(nil)
	decoded, err := UnmarshalMatchRecords(data)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestUnmarshalCorruptData(t *testing.T) {
	records := []*core.MatchRecord{
		{Source: "a.log", LineNo: 1, Keywords: []string{"x"}, Lines: []string{"x"}},
	}
	data := MarshalMatchRecords(records)

	_, err := UnmarshalMatchRecords(data[:len(data)-2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
