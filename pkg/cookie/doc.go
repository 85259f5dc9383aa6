// Package cookie stores small JSON values in encrypted, HttpOnly cookies.
//
// Values are sealed with AES-256-GCM; the key is derived from a secret of at
// least 32 bytes. Cookies written under one name cannot be read under another.
//
//	m, err := cookie.New(os.Getenv("COOKIE_SECRET"), cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//
//	// redirect step
//	err = m.SetEncrypted(w, "__flow", flow, 600)
//
//	// callback step
//	var flow Flow
//	if err := m.GetEncrypted(r, "__flow", &flow); err != nil {
//		// cookie.ErrNotFound or cookie.ErrDecrypt
//	}
//	m.Delete(w, "__flow")
package cookie
