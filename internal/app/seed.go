package app

import "context"

// Seed creates the bootstrap admin user when the user store is empty.
func (s *Services) Seed(ctx context.Context, adminPassword string) error {
	return s.Users.InitializeUsers(ctx, adminPassword)
}
