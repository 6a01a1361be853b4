package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

func Ask(question string, allowEmpty bool, validate func(string) (bool, string)) (string, error) {
	fmt.Println("")
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print(question)

		result, err := reader.ReadString('\n')
		if err != nil {
			return result, errors.WithMessage(err, "failed to read string")
		}
		result = strings.TrimSpace(result)

		if allowEmpty && result == "" {
			return result, nil
		}

		if validate != nil {
			ok, message := validate(result)
			if !ok {
				fmt.Println(message)

				continue
			}
		}

		if result != "" {
			return result, nil
		}
	}
}

// AskPassword reads a line without echoing it to the terminal.
func AskPassword(question string) (string, error) {
	fmt.Println("")
	fmt.Print(question)

	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println("")
	if err != nil {
		return "", errors.WithMessage(err, "failed to read password")
	}

	return strings.TrimSpace(string(b)), nil
}
