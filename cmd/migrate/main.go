package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/crlapples/commerce/internal/cart"
	"github.com/crlapples/commerce/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	path := flag.String("db", "", "cart database path (defaults to CART_DB_PATH)")
	flag.Parse()

	if *path == "" {
		*path = os.Getenv("CART_DB_PATH")
	}
	if *path == "" {
		*path = "carts.db"
	}

	database, err := db.Open(*path)
	if err != nil {
		log.Fatalf("failed to open cart db: %v", err)
	}
	defer database.Close()

	if err := cart.InitSchema(database); err != nil {
		log.Fatalf("failed to apply cart schema: %v", err)
	}

	fmt.Printf("cart store schema applied to %s\n", *path)
}
