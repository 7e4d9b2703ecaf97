// Copyright 2026 The Go JMAP Authors.
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
//
// SPDX-License-Identifier: Apache-2.0

// Package pool provides typed object pools.
package pool

import (
	"bytes"
	"sync"
)

// Pool is a strongly-typed wrapper around [sync.Pool].
type Pool[T any] struct {
	p sync.Pool
}

// Resetter is implemented by pooled values that clear themselves before
// they are reused.
type Resetter interface {
	Reset()
}

// New returns a new [Pool] for T, and will use fn to construct new T's when the pool is empty.
func New[T any](fn func() T) *Pool[T] {
	return &Pool[T]{
		p: sync.Pool{
			New: func() any {
				return fn()
			},
		},
	}
}

// Get gets a T from the pool, or creates a new one if the pool is empty.
func (p *Pool[T]) Get() T {
	return p.p.Get().(T)
}

// Put resets x if it is a [Resetter] and returns it into the pool.
func (p *Pool[T]) Put(x T) {
	if r, ok := any(x).(Resetter); ok {
		r.Reset()
	}
	p.p.Put(x)
}

// maxPooledBuffer is the largest buffer [PutBuffer] keeps.
const maxPooledBuffer = 1 << 20

// Buffers holds the buffers HTTP response bodies are read into.
var Buffers = New(func() *bytes.Buffer {
	return new(bytes.Buffer)
})

// PutBuffer returns buf to [Buffers] unless it grew past maxPooledBuffer.
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	Buffers.Put(buf)
}
