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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	log "github.com/apex/log"
	queue "github.com/justincpresley/lqueue/pkg/queue"
	errors "github.com/pkg/errors"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

type command struct {
	usage string
	help  string
	run   func(args []string) error
}

// Interpreter drives a single queue from text commands, one per line.
type Interpreter struct {
	config   *Config
	alloc    *queue.CountingAllocator
	q        *queue.Queue
	out      io.Writer
	logger   *log.Entry
	commands map[string]command
}

func New(out io.Writer, config *Config) *Interpreter {
	if config == nil {
		config = GetDefaultConfig()
	}
	it := &Interpreter{
		config: config,
		alloc:  queue.NewCountingAllocator(config.Seed),
		out:    out,
		logger: log.WithField("module", "harness"),
	}
	it.alloc.SetFailPercent(config.FailPercent)
	it.commands = map[string]command{
		"new":     {"new", "Create a new queue", it.doNew},
		"free":    {"free", "Free the queue", it.doFree},
		"ih":      {"ih str [n]", "Insert str at head n times", it.doInsertHead},
		"it":      {"it str [n]", "Insert str at tail n times", it.doInsertTail},
		"rh":      {"rh [str]", "Remove from head, optionally comparing with str", it.doRemoveHead},
		"rt":      {"rt [str]", "Remove from tail, optionally comparing with str", it.doRemoveTail},
		"size":    {"size", "Print queue size", it.doSize},
		"dm":      {"dm", "Delete the middle element", it.doDeleteMid},
		"dedup":   {"dedup", "Delete duplicated strings of a sorted queue", it.doDedup},
		"swap":    {"swap", "Swap every two adjacent elements", it.doSwap},
		"reverse": {"reverse", "Reverse the queue", it.doReverse},
		"sort":    {"sort", "Sort the queue ascending", it.doSort},
		"show":    {"show", "Print the queue", it.doShow},
		"digest":  {"digest", "Print the digest of the queue", it.doDigest},
		"verify":  {"verify", "Check the links of the queue", it.doVerify},
		"leaks":   {"leaks", "Print allocations still live", it.doLeaks},
		"option":  {"option name value", "Set fail, length, limit, seed or dedup", it.doOption},
		"help":    {"help", "Show this list", it.doHelp},
		"quit":    {"quit", "Exit", func([]string) error { return ErrQuit }},
	}
	return it
}

// Exec runs one command line. Blank lines and lines starting with # are
// ignored.
func (it *Interpreter) Exec(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 || strings.HasPrefix(args[0], "#") {
		return nil
	}
	cmd, ok := it.commands[args[0]]
	if !ok {
		return errors.Errorf("unknown command '%s'", args[0])
	}
	return cmd.run(args[1:])
}

// Run executes every line of r, echoing each one, and returns how many
// commands failed. It stops early on quit.
func (it *Interpreter) Run(r io.Reader) (int, error) {
	failed := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fmt.Fprintf(it.out, "cmd> %s\n", line)
		err := it.Exec(line)
		if errors.Is(err, ErrQuit) {
			break
		}
		if err != nil {
			failed++
			it.report(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return failed, errors.Wrap(err, "reading commands")
	}
	return failed, nil
}

func (it *Interpreter) report(err error) {
	it.logger.WithError(err).Debug("Command failed.")
	fmt.Fprintf(it.out, "ERROR: %v\n", err)
}

// Close frees the queue if one is left and reports allocations that are
// still live afterwards.
func (it *Interpreter) Close() error {
	if it.q != nil {
		it.q.Free()
		it.q = nil
	}
	return it.checkLeaks()
}

func (it *Interpreter) Allocator() *queue.CountingAllocator { return it.alloc }

func (it *Interpreter) checkLeaks() error {
	if n := it.alloc.LiveBlocks(); n != 0 {
		return errors.Errorf("%d blocks (%d bytes) still allocated", n, it.alloc.LiveBytes())
	}
	if n := it.alloc.BadFrees(); n != 0 {
		return errors.Errorf("%d blocks released more than once", n)
	}
	return nil
}

func (it *Interpreter) needQueue(name string) error {
	if it.q == nil {
		return errors.Errorf("calling %s on a null queue", name)
	}
	return nil
}

func noArgs(name string, args []string) error {
	if len(args) != 0 {
		return errors.Errorf("%s takes no arguments", name)
	}
	return nil
}

func (it *Interpreter) show() {
	var buf bytes.Buffer
	buf.WriteString("l = [")
	cnt := 0
	limit := it.config.ShowLimit
	it.q.Each(func(v string) bool {
		if limit > 0 && cnt == limit {
			buf.WriteString(" ...")
			return false
		}
		if cnt > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(v)
		cnt++
		return true
	})
	buf.WriteString("]\n")
	it.out.Write(buf.Bytes())
}

func (it *Interpreter) doNew(args []string) error {
	if err := noArgs("new", args); err != nil {
		return err
	}
	if it.q != nil {
		it.q.Free()
		it.q = nil
	}
	it.q = queue.New(&queue.Config{Allocator: it.alloc, DedupPolicy: it.config.DedupPolicy})
	if it.q == nil {
		return errors.New("allocation of the queue failed")
	}
	it.show()
	return nil
}

func (it *Interpreter) doFree(args []string) error {
	if err := noArgs("free", args); err != nil {
		return err
	}
	if it.q != nil {
		it.q.Free()
		it.q = nil
	}
	fmt.Fprintln(it.out, "l = NULL")
	return it.checkLeaks()
}

func (it *Interpreter) insert(name string, args []string, fn func(string) bool) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.Errorf("%s needs a string and an optional count", name)
	}
	count := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return errors.Errorf("invalid count '%s'", args[1])
		}
		count = n
	}
	if err := it.needQueue(name); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if !fn(args[0]) {
			it.show()
			return errors.Errorf("%s failed after %d insertions", name, i)
		}
	}
	it.show()
	return nil
}

func (it *Interpreter) doInsertHead(args []string) error {
	return it.insert("ih", args, it.q.InsertHead)
}

func (it *Interpreter) doInsertTail(args []string) error {
	return it.insert("it", args, it.q.InsertTail)
}

func (it *Interpreter) remove(name string, args []string, fn func([]byte) *queue.Element) error {
	if len(args) > 1 {
		return errors.Errorf("%s takes at most one argument", name)
	}
	if err := it.needQueue(name); err != nil {
		return err
	}
	buf := make([]byte, it.config.StringLength+1)
	e := fn(buf)
	if e == nil {
		return errors.Errorf("%s on an empty queue", name)
	}
	e.Release()
	got := string(buf[:bytes.IndexByte(buf, 0)])
	fmt.Fprintf(it.out, "Removed %s from queue\n", got)
	it.show()
	if len(args) == 1 && got != args[0] {
		return errors.Errorf("removed value %s does not match expected value %s", got, args[0])
	}
	return nil
}

func (it *Interpreter) doRemoveHead(args []string) error {
	return it.remove("rh", args, it.q.RemoveHead)
}

func (it *Interpreter) doRemoveTail(args []string) error {
	return it.remove("rt", args, it.q.RemoveTail)
}

func (it *Interpreter) doSize(args []string) error {
	if err := noArgs("size", args); err != nil {
		return err
	}
	if err := it.needQueue("size"); err != nil {
		return err
	}
	fmt.Fprintf(it.out, "Queue size = %d\n", it.q.Size())
	return nil
}

func (it *Interpreter) doDeleteMid(args []string) error {
	if err := noArgs("dm", args); err != nil {
		return err
	}
	if err := it.needQueue("dm"); err != nil {
		return err
	}
	if !it.q.DeleteMid() {
		return errors.New("dm on an empty queue")
	}
	it.show()
	return nil
}

func (it *Interpreter) doDedup(args []string) error {
	if err := noArgs("dedup", args); err != nil {
		return err
	}
	if err := it.needQueue("dedup"); err != nil {
		return err
	}
	if !it.q.IsSorted() {
		return errors.New("dedup needs a sorted queue")
	}
	if !it.q.DeleteDup() {
		return errors.New("dedup failed")
	}
	it.show()
	return nil
}

func (it *Interpreter) structural(name string, args []string, fn func()) error {
	if err := noArgs(name, args); err != nil {
		return err
	}
	if err := it.needQueue(name); err != nil {
		return err
	}
	granted := it.alloc.Granted()
	fn()
	if it.alloc.Granted() != granted {
		return errors.Errorf("%s allocated memory", name)
	}
	if err := it.q.Verify(); err != nil {
		return errors.Wrapf(err, "%s broke the queue", name)
	}
	it.show()
	return nil
}

func (it *Interpreter) doSwap(args []string) error {
	return it.structural("swap", args, it.q.Swap)
}

func (it *Interpreter) doReverse(args []string) error {
	return it.structural("reverse", args, it.q.Reverse)
}

func (it *Interpreter) doSort(args []string) error {
	if err := it.structural("sort", args, it.q.Sort); err != nil {
		return err
	}
	if !it.q.IsSorted() {
		return errors.New("queue is not sorted in ascending order")
	}
	return nil
}

func (it *Interpreter) doShow(args []string) error {
	if err := noArgs("show", args); err != nil {
		return err
	}
	if it.q == nil {
		fmt.Fprintln(it.out, "l = NULL")
		return nil
	}
	it.show()
	return nil
}

func (it *Interpreter) doDigest(args []string) error {
	if err := noArgs("digest", args); err != nil {
		return err
	}
	if err := it.needQueue("digest"); err != nil {
		return err
	}
	fmt.Fprintf(it.out, "Digest = %016x\n", it.q.Digest())
	return nil
}

func (it *Interpreter) doVerify(args []string) error {
	if err := noArgs("verify", args); err != nil {
		return err
	}
	if err := it.needQueue("verify"); err != nil {
		return err
	}
	return it.q.Verify()
}

func (it *Interpreter) doLeaks(args []string) error {
	if err := noArgs("leaks", args); err != nil {
		return err
	}
	fmt.Fprintf(it.out, "Live blocks: sentinel=%d element=%d string=%d bytes=%d\n",
		it.alloc.Live(queue.SentinelBlock),
		it.alloc.Live(queue.ElementBlock),
		it.alloc.Live(queue.StringBlock),
		it.alloc.LiveBytes())
	return nil
}

func (it *Interpreter) doOption(args []string) error {
	if len(args) != 2 {
		return errors.New("option needs a name and a value")
	}
	if args[0] == "dedup" {
		switch args[1] {
		case queue.DropDuplicated.String():
			it.config.DedupPolicy = queue.DropDuplicated
		case queue.KeepLast.String():
			it.config.DedupPolicy = queue.KeepLast
		default:
			return errors.Errorf("unknown dedup policy '%s'", args[1])
		}
		return nil
	}
	val, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return errors.Wrapf(err, "option %s", args[0])
	}
	switch args[0] {
	case "fail":
		if val < 0 || val > 100 {
			return errors.Errorf("fail must be between 0 and 100, got %d", val)
		}
		it.config.FailPercent = int(val)
		it.alloc.SetFailPercent(int(val))
	case "length":
		if val < 1 {
			return errors.Errorf("length must be positive, got %d", val)
		}
		it.config.StringLength = int(val)
	case "limit":
		if val < 0 {
			return errors.Errorf("limit must not be negative, got %d", val)
		}
		it.config.ShowLimit = int(val)
	case "seed":
		it.config.Seed = val
		it.alloc.Seed(val)
	default:
		return errors.Errorf("unknown option '%s'", args[0])
	}
	return nil
}

func (it *Interpreter) doHelp([]string) error {
	names := make([]string, 0, len(it.commands))
	for name := range it.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := it.commands[name]
		fmt.Fprintf(it.out, "  %-18s | %s\n", cmd.usage, cmd.help)
	}
	return nil
}
