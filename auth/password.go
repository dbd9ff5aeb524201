package auth

import "golang.org/x/crypto/bcrypt"

// hashCost is lowered in tests.
var hashCost = bcrypt.DefaultCost

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
