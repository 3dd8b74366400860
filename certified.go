package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

//CertificateWriter emits a DRAT-like trace of clause additions and deletions
type CertificateWriter struct {
	f    *os.File
	w    *bufio.Writer
	done bool
}

//NewCertificateWriter opens the certificate output file
func NewCertificateWriter(path string) (*CertificateWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open certificate output %s", path)
	}
	return &CertificateWriter{f: f, w: bufio.NewWriter(f)}, nil
}

func (cw *CertificateWriter) writeLits(lits []Lit) {
	for i := range lits {
		fmt.Fprintf(cw.w, "%d ", lits[i].External())
	}
	fmt.Fprint(cw.w, "0\n")
}

//AddClause records the addition of a clause
func (cw *CertificateWriter) AddClause(lits []Lit) {
	cw.writeLits(lits)
}

//DeleteClause records the deletion of a clause
func (cw *CertificateWriter) DeleteClause(lits []Lit) {
	fmt.Fprint(cw.w, "d ")
	cw.writeLits(lits)
}

//Done terminates the certificate with the empty clause and closes the file.
//Calling it twice is harmless.
func (cw *CertificateWriter) Done() error {
	if cw.done {
		return nil
	}
	cw.done = true
	fmt.Fprint(cw.w, "0\n")
	if err := cw.w.Flush(); err != nil {
		return errors.Wrap(err, "could not flush the certificate")
	}
	return cw.f.Close()
}
