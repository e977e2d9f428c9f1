package auth

// Claims representa la identidad externa extraída del token.
// UserID es el ID del proveedor (Clerk), no el ID interno.
type Claims struct {
	UserID string
	Email  string
	Name   string
}
