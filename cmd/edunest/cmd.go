package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"edunest/internal/domain"
	"edunest/internal/gateway"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	gw  *gateway.Gateway
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage: edunest [-ephemeral] COMMAND [flags]")
	fmt.Fprintln(cli.out, "Commands:")
	fmt.Fprintln(cli.out, "  status                                      - check whether the backend is reachable")
	fmt.Fprintln(cli.out, "  inquiry -name -email -phone [-message]      - submit an inquiry")
	fmt.Fprintln(cli.out, "  admission -child-name -child-dob -program -parent-name -email -phone [-address]")
	fmt.Fprintln(cli.out, "                                              - submit an admission application")
	fmt.Fprintln(cli.out, "  verify-pin -pin PIN                         - check an admin PIN")
	fmt.Fprintln(cli.out, "  inquiries -pin PIN                          - list inquiries, newest first")
	fmt.Fprintln(cli.out, "  admissions -pin PIN                         - list admission applications, newest first")
	fmt.Fprintln(cli.out, "  set-status -id ID -status STATUS -pin PIN   - update an admission's status")
	fmt.Fprintln(cli.out, "  delete-inquiry -id ID -pin PIN              - delete an inquiry")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		cli.printUsage()
		return errHelp
	}

	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(cli.out)

	switch cmd {
	case "status":
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return cli.print(map[string]bool{"online": cli.gw.CheckStatus(ctx)})

	case "inquiry":
		var req domain.InquiryRequest
		fs.StringVar(&req.Name, "name", "", "Parent or guardian name")
		fs.StringVar(&req.Email, "email", "", "Contact email")
		fs.StringVar(&req.Phone, "phone", "", "Contact phone")
		fs.StringVar(&req.Message, "message", "", "Optional message")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		res, err := cli.gw.SubmitInquiry(ctx, req)
		if err != nil {
			return err
		}
		return cli.print(res)

	case "admission":
		var req domain.AdmissionRequest
		fs.StringVar(&req.ChildName, "child-name", "", "Child's full name")
		fs.StringVar(&req.ChildDOB, "child-dob", "", "Child's date of birth (YYYY-MM-DD)")
		fs.StringVar(&req.Program, "program", "", "Program applied for")
		fs.StringVar(&req.ParentName, "parent-name", "", "Parent or guardian name")
		fs.StringVar(&req.Email, "email", "", "Contact email")
		fs.StringVar(&req.Phone, "phone", "", "Contact phone")
		fs.StringVar(&req.Address, "address", "", "Optional home address")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		res, err := cli.gw.SubmitAdmission(ctx, req)
		if err != nil {
			return err
		}
		return cli.print(res)

	case "verify-pin":
		pin := fs.String("pin", "", "Admin PIN")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return cli.print(map[string]bool{"authorized": cli.gw.VerifyPIN(ctx, *pin)})

	case "inquiries":
		pin := fs.String("pin", "", "Admin PIN")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		res, err := cli.gw.GetInquiries(ctx, *pin)
		if err != nil {
			return err
		}
		return cli.print(res)

	case "admissions":
		pin := fs.String("pin", "", "Admin PIN")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		res, err := cli.gw.GetAdmissions(ctx, *pin)
		if err != nil {
			return err
		}
		return cli.print(res)

	case "set-status":
		id := fs.Int64("id", 0, "Admission id")
		status := fs.String("status", "", "New status, e.g. accepted")
		pin := fs.String("pin", "", "Admin PIN")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *id == 0 {
			fs.Usage()
			return errHelp
		}
		res, err := cli.gw.UpdateAdmissionStatus(ctx, *id, *status, *pin)
		if err != nil {
			return err
		}
		return cli.print(res)

	case "delete-inquiry":
		id := fs.Int64("id", 0, "Inquiry id")
		pin := fs.String("pin", "", "Admin PIN")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *id == 0 {
			fs.Usage()
			return errHelp
		}
		res, err := cli.gw.DeleteInquiry(ctx, *id, *pin)
		if err != nil {
			return err
		}
		return cli.print(res)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) print(v any) error {
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
