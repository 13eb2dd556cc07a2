package cmd

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	echoadapter "github.com/awslabs/aws-lambda-go-api-proxy/echo"
	"github.com/spf13/cobra"

	awsevents "github.com/aws/aws-lambda-go/events"
)

// Lambda runs the same echo app behind an AWS Lambda function URL, which
// delivers HTTP API v2 payloads.
var Lambda = &cobra.Command{
	Use: "lambda",
	Run: func(cmd *cobra.Command, args []string) {
		runLambda()
	},
}

func runLambda() {
	adapter := echoadapter.NewV2(buildApp())
	lambda.Start(func(ctx context.Context, req awsevents.APIGatewayV2HTTPRequest) (awsevents.APIGatewayV2HTTPResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
