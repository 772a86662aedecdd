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
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers. The type count here is too small to justify
// a codegen step.

var stringsMUS = ord.NewSliceSer[string](ord.String)

// MatchRecordMUS serializes a MatchRecord in MUS format.
var MatchRecordMUS = matchRecordSer{}

// MatchRecordsMUS serializes a slice of MatchRecord in MUS format.
var MatchRecordsMUS = ord.NewSliceSer[MatchRecord](MatchRecordMUS)

type matchRecordSer struct{}

func (matchRecordSer) Marshal(v MatchRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.Source, bs)
	n += varint.Int.Marshal(v.LineNo, bs[n:])
	n += stringsMUS.Marshal(v.Keywords, bs[n:])
	n += stringsMUS.Marshal(v.Lines, bs[n:])
	return
}

func (matchRecordSer) Unmarshal(bs []byte) (v MatchRecord, n int, err error) {
	v.Source, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.LineNo, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Keywords, n1, err = stringsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Lines, n1, err = stringsMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (matchRecordSer) Size(v MatchRecord) (size int) {
	size = ord.String.Size(v.Source)
	size += varint.Int.Size(v.LineNo)
	size += stringsMUS.Size(v.Keywords)
	size += stringsMUS.Size(v.Lines)
	return
}

func (matchRecordSer) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = stringsMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = stringsMUS.Skip(bs[n:])
	n += n1
	return
}
