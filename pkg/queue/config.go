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

// DedupPolicy selects what DeleteDup keeps of a run of equal strings.
type DedupPolicy int

const (
	// DropDuplicated removes every string that occurs more than once.
	DropDuplicated DedupPolicy = 0
	// KeepLast collapses each run of equal strings to its last element.
	KeepLast DedupPolicy = 1
)

func (p DedupPolicy) String() string {
	switch p {
	case DropDuplicated:
		return "drop"
	case KeepLast:
		return "keep-last"
	default:
		return "unknown"
	}
}

type Config struct {
	Allocator   Allocator
	DedupPolicy DedupPolicy
}

func GetDefaultConfig() *Config {
	return &Config{
		Allocator:   HeapAllocator{},
		DedupPolicy: DropDuplicated,
	}
}
