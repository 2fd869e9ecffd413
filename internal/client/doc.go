// SPDX-License-Identifier: Apache-2.0

// Package client implements the device application runtime.
//
// It wires the localhost façade, client services, and background
// reconciliation into a single process lifecycle with graceful shutdown.
package client
