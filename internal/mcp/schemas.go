package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// userProperties describes the chat identity shared by all tools
func userProperties() map[string]interface{} {
	return map[string]interface{}{
		"user_id": map[string]interface{}{
			"type":        "integer",
			"description": "Chat user id",
			"minimum":     1,
		},
		"username": map[string]interface{}{
			"type":        "string",
			"description": "Optional chat username",
		},
		"full_name": map[string]interface{}{
			"type":        "string",
			"description": "Display name used in greetings and orders",
		},
	}
}

// sendMessageTool returns the tool definition for send_message
func sendMessageTool() mcp.Tool {
	props := userProperties()
	props["text"] = map[string]interface{}{
		"type":        "string",
		"description": "Message text: a command such as /start, a menu label or free text like a phone number",
	}

	return mcp.Tool{
		Name:        "send_message",
		Description: "Send a text message to the restaurant bot and get its replies",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"user_id", "text"},
		},
	}
}

// pressButtonTool returns the tool definition for press_button
func pressButtonTool() mcp.Tool {
	props := userProperties()
	props["data"] = map[string]interface{}{
		"type":        "string",
		"description": "Callback data of an inline button from a previous reply (e.g. cat_1, add_3, pay_cash)",
	}

	return mcp.Tool{
		Name:        "press_button",
		Description: "Press an inline keyboard button and get the bot's replies",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"user_id", "data"},
		},
	}
}

// fetchMessagesTool returns the tool definition for fetch_messages
func fetchMessagesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "fetch_messages",
		Description: "Fetch and remove messages the bot queued for a user, such as new order notifications for the operator",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "integer",
					"description": "Recipient user id",
					"minimum":     1,
				},
			},
			Required: []string{"user_id"},
		},
	}
}

// listOrdersTool returns the tool definition for list_orders
func listOrdersTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_orders",
		Description: "List the most recent orders. Only the operator gets a reply",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: userProperties(),
			Required:   []string{"user_id"},
		},
	}
}

// blockBotTool returns the tool definition for block_bot
func blockBotTool() mcp.Tool {
	return mcp.Tool{
		Name:        "block_bot",
		Description: "Block or unblock the bot for a user. A blocked user receives no queued messages and pending ones are dropped",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "integer",
					"description": "User id",
					"minimum":     1,
				},
				"blocked": map[string]interface{}{
					"type":        "boolean",
					"description": "true to block the bot, false to unblock it",
					"default":     true,
				},
			},
			Required: []string{"user_id"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report open carts, active conversations, undelivered operator messages and stored orders",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
