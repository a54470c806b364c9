package cmd

import (
	"log"

	"github.com/mdexhq/mdex/pkg/sdk/sdkerr"
)

// exitIfSdkError inspects errors returned from the SDK and emits user-friendly
// guidance before exiting. Non-SDK errors fall back to log.Fatalf.
func exitIfSdkError(err error) {
	if err == nil {
		return
	}
	switch {
	case sdkerr.IsCode(err, sdkerr.CodeUnauthorized):
		log.Fatalf("authentication required: run 'mdexctl auth login' (%v)", err)
	case sdkerr.IsCode(err, sdkerr.CodePollTimeout):
		log.Fatalf("the job is taking too long; try again later or poll manually (%v)", err)
	case sdkerr.IsCode(err, sdkerr.CodeValidation):
		log.Fatalf("the controller rejected the request: %v", err)
	default:
		log.Fatalf("%v", err)
	}
}
