// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	RunnerNotFoundId Id = iota + 1
	ConfigLoadFailedId
	ConfigInvalidId
	PlaybookFailedId
	SanityCheckFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // upstream documentation that may help
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- " + string(link) + "\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	runnerNotFoundIssue = &Issue{
		id: RunnerNotFoundId,
		mdMsg: `
# ansible-playbook not found!

The playbook runner binary could not be started.

## Things you can try:
- Install Ansible:
~~~
$ pip install ansible
~~~

- Check that 'ansible-playbook' is in your PATH:
~~~
$ which ansible-playbook
~~~

- If Ansible lives in a virtualenv, activate it before running rolebook`,
		docLinks: []HttpLink{
			"https://docs.ansible.com/ansible/latest/installation_guide/",
		},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Scenario configuration could not be loaded!

We found a scenario file but could not read or parse it.

## Things you can try:
- Check that the file contains valid CUE syntax
- Verify the values match the scenario schema
- Point rolebook at a different scenario file:
~~~
$ rolebook converge --scenario path/to/rolebook.cue
~~~`,
	}

	configInvalidIssue = &Issue{
		id: ConfigInvalidId,
		mdMsg: `
# Scenario configuration is invalid!

The scenario file parsed, but some values failed validation.

## Common causes:
- An unknown action name
- An empty playbook path for the requested action
- A whitespace-only inventory directory

## Things you can try:
- Review the validation errors printed above
- Compare your scenario file against the schema in the documentation`,
	}

	playbookFailedIssue = &Issue{
		id: PlaybookFailedId,
		mdMsg: `
# Playbook run failed!

ansible-playbook exited with a non-zero status. rolebook exits with the
same code so CI pipelines see the real result.

## Things you can try:
- Re-run with --debug to see the full command line and environment
- Run the printed command by hand to reproduce the failure
- Check the playbook and inventory for host or task errors`,
	}

	sanityCheckFailedIssue = &Issue{
		id: SanityCheckFailedId,
		mdMsg: `
# Driver sanity checks failed!

The scenario driver reported that the target environment is not ready.

## Things you can try:
- Verify the driver's requirements (credentials, endpoints, local tools)
- Create the scenario instances first:
~~~
$ rolebook create
~~~`,
	}

	issues = map[Id]*Issue{
		runnerNotFoundIssue.Id():    runnerNotFoundIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		configInvalidIssue.Id():     configInvalidIssue,
		playbookFailedIssue.Id():    playbookFailedIssue,
		sanityCheckFailedIssue.Id(): sanityCheckFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
