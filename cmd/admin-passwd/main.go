// admin-passwd prints a bcrypt hash for the admin password, ready to paste
// into admin.password_hash (or ADMIN_PASSWORD_HASH).
//
//	echo -n 'new-password' | go run ./cmd/admin-passwd
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	hash, err := run(os.Stdin, *cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "admin-passwd:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

func run(in io.Reader, cost int) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
