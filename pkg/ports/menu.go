package ports

import "context"

// MenuProvider supplies the textual menu. Content and formatting belong to the provider.
type MenuProvider interface {
	Menu(ctx context.Context) (string, error)
}
