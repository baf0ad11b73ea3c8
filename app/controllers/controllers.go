// Package controllers adapts HTTP requests to the services. Handlers take a
// *ctx.Context, build the Caller from the verified token and render the
// result through app/resources.
package controllers

import (
	"github.com/shashiranjanraj/automart/app/services"
	"github.com/shashiranjanraj/automart/pkg/ctx"
)

func caller(c *ctx.Context) services.Caller {
	id, role, _ := c.Identity()
	return services.Caller{UserID: id, Role: role}
}
