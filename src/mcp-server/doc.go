// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes the webhook verification pipeline over the
// [MCP] stdio protocol, so agent tooling can verify captured requests,
// inspect signing-certificate chains, and check bundle URLs without
// shelling out to the CLI.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
