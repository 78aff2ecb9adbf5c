/*
 Copyright (C) 2022-2025, The lqueue Go Library Authors

 This file is part of lqueue: A Go Library for Sentinel-List Queues.

 This library is free software; you can redistribute it and/or
 modify it under the terms of the GNU Lesser General Public
 License as published by the Free Software Foundation; either
 version 2.1 of the License, or any later version.

 This library is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
 See the GNU Lesser General Public License for more details.

 A copy of the GNU Lesser General Public License is provided by this
 library under LICENSE.md. To see more details about the authors and
 contributors, please see AUTHORS.md. If absent, Both of which can be
 found within the GitHub repository:
          https://github.com/justincpresley/lqueue
*/

package queue

import (
	"math/rand"
	"unsafe"

	list "github.com/justincpresley/lqueue/util/list"
)

type Block int

const (
	SentinelBlock Block = iota
	ElementBlock
	StringBlock
	numBlocks
)

func (b Block) String() string {
	switch b {
	case SentinelBlock:
		return "sentinel"
	case ElementBlock:
		return "element"
	case StringBlock:
		return "string"
	default:
		return "unknown"
	}
}

var (
	sentinelSize = int(unsafe.Sizeof(list.Node[*Element]{}))
	elementSize  = int(unsafe.Sizeof(Element{}))
)

// strings are accounted with room for a terminator
func stringSize(s string) int { return len(s) + 1 }

// Allocator grants or refuses the storage a queue needs. A refused request
// makes the calling operation fail without touching the queue.
type Allocator interface {
	Allocate(kind Block, size int) bool
	Release(kind Block, size int)
}

type HeapAllocator struct{}

func (HeapAllocator) Allocate(Block, int) bool { return true }
func (HeapAllocator) Release(Block, int)       {}

// CountingAllocator keeps track of every live block and can be told to
// refuse requests, either at random or after a fixed number of grants.
type CountingAllocator struct {
	live        [numBlocks]int
	bytes       int
	granted     int
	refused     int
	badFrees    int
	failPercent int
	failAfter   int // 0 = never
	rnd         *rand.Rand
}

func NewCountingAllocator(seed int64) *CountingAllocator {
	return &CountingAllocator{rnd: rand.New(rand.NewSource(seed))}
}

// SetFailPercent makes roughly p out of 100 requests fail.
func (a *CountingAllocator) SetFailPercent(p int) {
	if p < 0 {
		p = 0
	} else if p > 100 {
		p = 100
	}
	a.failPercent = p
}

// SetFailAfter refuses every request once n requests have been granted.
func (a *CountingAllocator) SetFailAfter(n int) { a.failAfter = n }

func (a *CountingAllocator) Seed(seed int64) { a.rnd.Seed(seed) }

func (a *CountingAllocator) Allocate(kind Block, size int) bool {
	if a.failAfter > 0 && a.granted >= a.failAfter {
		a.refused++
		return false
	}
	if a.failPercent > 0 && a.rnd.Intn(100) < a.failPercent {
		a.refused++
		return false
	}
	a.live[kind]++
	a.bytes += size
	a.granted++
	return true
}

func (a *CountingAllocator) Release(kind Block, size int) {
	if a.live[kind] == 0 {
		a.badFrees++
		return
	}
	a.live[kind]--
	a.bytes -= size
}

func (a *CountingAllocator) Live(kind Block) int { return a.live[kind] }
func (a *CountingAllocator) LiveBytes() int      { return a.bytes }
func (a *CountingAllocator) Granted() int        { return a.granted }
func (a *CountingAllocator) Refused() int        { return a.refused }
func (a *CountingAllocator) BadFrees() int       { return a.badFrees }

func (a *CountingAllocator) LiveBlocks() int {
	total := 0
	for _, n := range a.live {
		total += n
	}
	return total
}
