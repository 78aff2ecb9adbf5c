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

package harness

import (
	queue "github.com/justincpresley/lqueue/pkg/queue"
)

type Config struct {
	StringLength int   // bytes copied out by rh/rt, excluding the terminator
	ShowLimit    int   // elements printed by show, 0 = all
	FailPercent  int   // chance of an allocation being refused
	Seed         int64 // seed of the allocation failure source
	DedupPolicy  queue.DedupPolicy
}

func GetDefaultConfig() *Config {
	return &Config{
		StringLength: 1024,
		ShowLimit:    50,
		FailPercent:  0,
		Seed:         1,
		DedupPolicy:  queue.DropDuplicated,
	}
}
