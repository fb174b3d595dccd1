// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads command queue definitions.
//
// A definition is a name, a description and the list of command
// entries handed to the queue. It can be written as YAML, JSON or HCL
// and fetched from anywhere go-getter understands.
package config
