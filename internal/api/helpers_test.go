package api

import "github.com/99minutos/user-service/internal/core/ports"

var listAll = ports.ListUsersFilter{Page: 1, Limit: 100}

func updateActive(active bool) ports.UpdateUserInput {
	return ports.UpdateUserInput{IsActive: &active}
}
