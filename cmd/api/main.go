package main

import "github.com/deouf-dev/talemy-api/internal/app"

func main() {
	app.Run()
}
