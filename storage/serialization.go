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
	"fmt"

	"github.com/poiesic/fastmatcher/core"
)

// MarshalMatchRecords serializes a result set to bytes.
func MarshalMatchRecords(records []*core.MatchRecord) []byte {
	values := make([]core.MatchRecord, len(records))
	for i, record := range records {
		values[i] = *record
	}
	buf := make([]byte, core.MatchRecordsMUS.Size(values))
	core.MatchRecordsMUS.Marshal(values, buf)
	return buf
}

// UnmarshalMatchRecords deserializes a result set from bytes.
func UnmarshalMatchRecords(data []byte) ([]*core.MatchRecord, error) {
	values, _, err := core.MatchRecordsMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	records := make([]*core.MatchRecord, len(values))
	for i := range values {
		records[i] = &values[i]
	}
	return records, nil
}
