// Package mcp exposes the restaurant ordering bot as a Model Context
// Protocol (MCP) server.
//
// Each chat event is a tool call:
//   - send_message: a text message, command or reply-keyboard label
//   - press_button: an inline keyboard button, identified by its callback data
//   - fetch_messages: drain the messages queued for a user (operator notifications)
//   - list_orders: the operator's recent orders, same as the /orders command
//   - block_bot: mark a user as having blocked the bot; their queued messages are dropped
//   - get_status: open carts, active conversations, stored orders and undelivered operator messages
//
// # Transport
//
// By default the server speaks JSON-RPC 2.0 over stdio, so stdout is reserved
// for the protocol and all logging goes to stderr. When http_addr is
// configured it serves the streamable HTTP transport instead and every
// request must carry the bot token:
//
//	Authorization: Bearer <BOT_TOKEN>
//
// # Trust Boundary
//
// The server does not authenticate chat users. Every tool trusts the user_id
// it is given, exactly as the bot trusts the identity a chat platform
// attaches to an update. The operator check behind list_orders and /orders,
// and the owner of the queue drained by fetch_messages, are therefore only as
// strong as the client: anyone who can reach the server (over stdio, or over
// HTTP with the bot token) can act as the operator by sending its id. Only
// connect trusted gateways.
//
// # Tool: send_message
//
//	Request:
//	{
//	  "name": "send_message",
//	  "arguments": {
//	    "user_id": 42,
//	    "username": "ali",
//	    "full_name": "Ali Valiyev",
//	    "text": "🛒 Buyurtma berish"
//	  }
//	}
//
//	Response:
//	{
//	  "replies": [
//	    {
//	      "text": "Kategoriyani tanlang:",
//	      "mode": "send",
//	      "markup": {
//	        "kind": "inline",
//	        "rows": [[{"text": "🍕 Pitsa", "data": "cat_1"}], ...]
//	      }
//	    }
//	  ]
//	}
//
// A reply's mode tells the client whether to post a new message ("send"),
// rewrite the message whose button was pressed ("edit") or delete it and
// post a new one ("replace"). Button presses may also carry a short
// "notice" to show as a popup.
//
// # Tool: press_button
//
//	Request:
//	{
//	  "name": "press_button",
//	  "arguments": {"user_id": 42, "data": "add_1"}
//	}
//
// The response has the same shape as send_message.
//
// # Tool: fetch_messages
//
//	Request:
//	{
//	  "name": "fetch_messages",
//	  "arguments": {"user_id": 1000}
//	}
//
//	Response:
//	{
//	  "user_id": 1000,
//	  "count": 1,
//	  "messages": [
//	    {"id": "5f0c...", "to": 1000, "text": "🔔 Yangi buyurtma! ...", "created_at": "..."}
//	  ]
//	}
//
// # Error Handling
//
// Handlers return *MCPError for bad arguments:
//   - -32602: Invalid params (missing user_id, text or data)
//   - -32603: Internal error
//   - -32001: Unknown button data
//
// Failures inside the conversation (database errors, products that were
// removed) never surface as protocol errors; the user gets a reply saying
// what went wrong in their own language.
//
// # MCP Client Configuration
//
//	{
//	  "mcpServers": {
//	    "orderbot": {
//	      "command": "/usr/local/bin/orderbot",
//	      "args": ["serve"],
//	      "env": {
//	        "ADMIN_ID": "1000"
//	      }
//	    }
//	  }
//	}
package mcp
