package service

import "digraph-be/internal/pkg/serverutils"

var (
	ErrTopicNotFound      = serverutils.NotFound("Topic not found")
	ErrTopicNameBlank     = serverutils.BadRequest("Topic name cannot be blank")
	ErrParentNotFound     = serverutils.BadRequest("Parent topic not found")
	ErrRootTopicImmutable = serverutils.Forbidden("The root topic cannot be changed")
	ErrTopicOwnParent     = serverutils.BadRequest("A topic cannot be its own parent")
	ErrTopicCycle         = serverutils.BadRequest("A topic cannot be moved under one of its descendants")
	ErrLinkNotFound       = serverutils.NotFound("Link not found")
	ErrInvalidUrl         = serverutils.BadRequest("Invalid url")
	ErrLinkUrlTaken       = serverutils.Conflict("Another link already has this url")
	ErrEmailTaken         = serverutils.Conflict("Email already registered")
	ErrInvalidCredentials = serverutils.Unauthorized("Invalid credentials")
	ErrUserBlocked        = serverutils.Forbidden("User account is blocked")
	ErrUserNotFound       = serverutils.NotFound("User not found")
)
