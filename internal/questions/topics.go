// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package questions

import "strings"

// awsServices is the keyword table used to derive a topic tag. More specific
// names come before names they could shadow. Matching is case-insensitive
// substring over the question text and choices, mirroring how the study
// material names services.
var awsServices = []string{
	"API Gateway",
	"Elastic Beanstalk",
	"ElastiCache",
	"CloudFormation",
	"CloudWatch",
	"CloudFront",
	"CloudTrail",
	"CodeDeploy",
	"CodePipeline",
	"CodeBuild",
	"CodeCommit",
	"Step Functions",
	"Secrets Manager",
	"Systems Manager",
	"DynamoDB",
	"Kinesis",
	"Cognito",
	"Route 53",
	"Lambda",
	"Fargate",
	"X-Ray",
	"ECS",
	"EKS",
	"ECR",
	"EC2",
	"RDS",
	"SQS",
	"SNS",
	"SES",
	"IAM",
	"KMS",
	"STS",
	"SAM",
	"VPC",
	"EBS",
	"EFS",
	"ELB",
	"S3",
}

// Topics returns the service keyword table in match order.
func Topics() []string {
	out := make([]string, len(awsServices))
	copy(out, awsServices)
	return out
}

// DeriveTopic returns the first service keyword found in the question text
// or any choice, or "" when none matches.
func DeriveTopic(text string, choices []string) string {
	haystack := strings.ToLower(text)
	for _, c := range choices {
		haystack += "\n" + strings.ToLower(c)
	}
	for _, svc := range awsServices {
		if strings.Contains(haystack, strings.ToLower(svc)) {
			return svc
		}
	}
	return ""
}
