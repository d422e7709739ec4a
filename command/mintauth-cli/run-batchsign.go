// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/mintauth/address"
	"github.com/bitmark-inc/mintauth/coins"
	"github.com/bitmark-inc/mintauth/signer"
)

// one entry of a batch file, content is plain text
type batchItem struct {
	Owner          address.Address `json:"owner"`
	Content        string          `json:"content"`
	Price          *coins.Amount   `json:"price,omitempty"`
	ActivationTime uint64          `json:"activationTime,omitempty"`
}

func readBatch(file string) ([]*signer.Request, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, err
	}

	var items []batchItem
	err = json.Unmarshal(data, &items)
	if nil != err {
		return nil, fmt.Errorf("%s: %s", file, err)
	}
	if 0 == len(items) {
		return nil, ErrBatchFileEmpty
	}

	requests := make([]*signer.Request, len(items))
	for i, item := range items {
		requests[i] = &signer.Request{
			Owner:          item.Owner,
			Content:        []byte(item.Content),
			Price:          item.Price,
			ActivationTime: item.ActivationTime,
		}
	}
	return requests, nil
}

func runBatchSign(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	file := c.String("file")
	if "" == file {
		return ErrFileIsRequired
	}

	requests, err := readBatch(file)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "items: %d\n", len(requests))
	}

	reply, err := m.client.BatchSign(requests)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
