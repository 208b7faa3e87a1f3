package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/vietanh2810/prompt-rewards-api/cmd/app"
)

// @title        Prompt rewards API
// @version      1.0
// @description  Prompt submissions and the rewards granted when staff approve them.
// @BasePath     /api/v1
//
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token issued by the community site, carrying user_id and is_staff.
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
