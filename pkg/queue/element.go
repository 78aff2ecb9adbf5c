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
	list "github.com/justincpresley/lqueue/util/list"
)

// Element is one queued string. While linked it belongs to its queue; once
// removed it belongs to the caller, who hands it back with Release.
type Element struct {
	node  list.Node[*Element]
	value string
	alloc Allocator
}

func (e *Element) Value() string { return e.value }

// Release returns the element and its string to the allocator they came
// from. It must not be called on an element that is still linked.
func (e *Element) Release() {
	if e == nil || e.alloc == nil {
		return
	}
	e.alloc.Release(StringBlock, stringSize(e.value))
	e.alloc.Release(ElementBlock, elementSize)
	e.value = ""
	e.alloc = nil
}
