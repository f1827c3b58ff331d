package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/dshills/orderbot/internal/flow"
)

// MCP error codes
const (
	ErrorCodeInvalidParams   = -32602 // Invalid method parameters
	ErrorCodeInternalError   = -32603 // Internal JSON-RPC error
	ErrorCodeUnknownCallback = -32001 // Button data the bot never issued
)

// handleSendMessage handles the send_message tool invocation
func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	user, err := userFromArgs(args)
	if err != nil {
		return nil, err
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or not a string",
		})
	}

	replies := s.flow.Handle(ctx, flow.ParseText(user, text))
	return repliesResult(replies), nil
}

// handlePressButton handles the press_button tool invocation
func (s *Server) handlePressButton(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	user, err := userFromArgs(args)
	if err != nil {
		return nil, err
	}

	data, ok := args["data"].(string)
	if !ok || data == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "data parameter is required", map[string]interface{}{
			"param":  "data",
			"reason": "missing or empty",
		})
	}

	action, err := flow.ParseCallback(user, data)
	if err != nil {
		s.logger.Debug("unknown callback", zap.Int64("user_id", user.ID), zap.String("data", data))
		return nil, newMCPError(ErrorCodeUnknownCallback, "unknown button", map[string]interface{}{
			"param":  "data",
			"value":  data,
			"reason": err.Error(),
		})
	}

	replies := s.flow.Handle(ctx, action)
	return repliesResult(replies), nil
}

// handleFetchMessages handles the fetch_messages tool invocation
func (s *Server) handleFetchMessages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	userID, err := userIDFromArgs(args)
	if err != nil {
		return nil, err
	}

	messages := s.mailbox.Drain(userID)

	response := map[string]interface{}{
		"user_id":  userID,
		"count":    len(messages),
		"messages": messages,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListOrders handles the list_orders tool invocation. It behaves
// exactly like the /orders command.
func (s *Server) handleListOrders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	user, err := userFromArgs(args)
	if err != nil {
		return nil, err
	}

	replies := s.flow.Handle(ctx, flow.Action{Kind: flow.ActionListOrders, User: user})
	return repliesResult(replies), nil
}

// handleBlockBot handles the block_bot tool invocation
func (s *Server) handleBlockBot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	userID, err := userIDFromArgs(args)
	if err != nil {
		return nil, err
	}

	blocked := getBoolDefault(args, "blocked", true)
	s.mailbox.SetBlocked(userID, blocked)
	s.logger.Info("bot block changed", zap.Int64("user_id", userID), zap.Bool("blocked", blocked))

	response := map[string]interface{}{
		"user_id": userID,
		"blocked": blocked,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orders, err := s.storage.CountOrders(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"open_carts":       s.carts.Len(),
		"active_sessions":  s.sessions.Len(),
		"orders_count":     orders,
		"operator_id":      s.config.OperatorID,
		"operator_pending": s.mailbox.Pending(s.config.OperatorID),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

func repliesResult(replies []flow.Reply) *mcp.CallToolResult {
	if replies == nil {
		replies = []flow.Reply{}
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"replies": replies,
	}))
}

func userFromArgs(args map[string]interface{}) (flow.User, error) {
	id, err := userIDFromArgs(args)
	if err != nil {
		return flow.User{}, err
	}
	return flow.User{
		ID:       id,
		Username: getStringDefault(args, "username", ""),
		FullName: getStringDefault(args, "full_name", ""),
	}, nil
}

func userIDFromArgs(args map[string]interface{}) (int64, error) {
	id, ok := getInt64(args, "user_id")
	if !ok || id <= 0 {
		return 0, newMCPError(ErrorCodeInvalidParams, "user_id parameter is required", map[string]interface{}{
			"param":  "user_id",
			"reason": "missing or not a positive integer",
		})
	}
	return id, nil
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// errorCode returns the MCP error code carried by err, or 0
func errorCode(err error) int {
	var mcpErr *MCPError
	if errors.As(err, &mcpErr) {
		return mcpErr.Code
	}
	return 0
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getInt64 extracts an integer parameter. JSON numbers arrive as float64;
// fractional values are rejected.
func getInt64(args map[string]interface{}, key string) (int64, bool) {
	switch val := args[key].(type) {
	case float64:
		if val != math.Trunc(val) || math.Abs(val) > 1<<53 {
			return 0, false
		}
		return int64(val), true
	case int:
		return int64(val), true
	case int64:
		return val, true
	case json.Number:
		n, err := val.Int64()
		return n, err == nil
	}
	return 0, false
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
