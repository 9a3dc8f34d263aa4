package main

import "bid-management-api/app"

func main() {
	app.Run()
}
