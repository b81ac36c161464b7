// apikey-gen mints a StarProof API key for manual testing against the
// issuance backend, without going through the dashboard flow.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/starproof/dashboard-api/internal/apikey"
)

func main() {
	env := flag.String("env", "test", "key environment tag (lowercase)")
	flag.Parse()

	key, err := apikey.Generate(*env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	keyEnv, _, err := apikey.Parse(key)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Println(key)
	fmt.Println("environment:", keyEnv)
	fmt.Println("stored encoding:", apikey.Encode(key))
}
