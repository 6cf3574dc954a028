// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the vfetch command-line client.
//
// It submits links to the server, follows task progress either with the
// terminal UI or with plain log lines, and saves finished files locally.
package client
