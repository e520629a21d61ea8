// Command token mints an access token for local testing. Production tokens are
// issued by the identity service.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	var (
		secret     = flag.String("secret", os.Getenv("JWT_SECRET_KEY"), "signing secret (defaults to JWT_SECRET_KEY)")
		expiration = flag.String("exp", "24h", "token lifetime")
		userID     = flag.String("user", "", "user id (required)")
		role       = flag.String("role", string(user.RoleEngineer), "role: ADMIN, HR, ENGINEER, USER or another designation")
		name       = flag.String("name", "", "display name")
		email      = flag.String("email", "", "email")
		employeeID = flag.String("employee", "", "employee id")
		companyID  = flag.String("company", "", "company id")
	)
	flag.Parse()

	if *secret == "" || *userID == "" {
		flag.Usage()
		os.Exit(2)
	}

	svc := jwt.NewJWTService(*secret, *expiration)
	token, expiresAt, err := svc.GenerateAccessToken(auth.Principal{
		UserID:     *userID,
		Role:       user.Role(*role),
		Name:       *name,
		Email:      *email,
		EmployeeID: *employeeID,
		CompanyID:  *companyID,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to mint token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
