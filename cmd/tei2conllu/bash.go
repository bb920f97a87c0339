package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const complete = `#! /bin/bash

_tei2conllu_autocomplete() {
    local cur opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"

    # file arguments
    if [[ "$cur" != -* ]] && [[ $COMP_CWORD -gt 1 ]]; then
        COMPREPLY=( $(compgen -f -- "$cur") )
        return 0
    fi

    # ask tei2conllu for the commands and flags of the current line
    if [[ "$cur" == "-"* ]]; then
        opts=$( "${COMP_WORDS[@]:0:$COMP_CWORD}" "$cur" --generate-bash-completion 2>/dev/null )
    else
        opts=$( "${COMP_WORDS[@]:0:$COMP_CWORD}" --generate-bash-completion 2>/dev/null )
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -o default -F _tei2conllu_autocomplete tei2conllu
`

func (e *env) bashAction(c *cli.Context) error {
	_, err := fmt.Fprint(e.ui.Out, complete)
	return err
}
